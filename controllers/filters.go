package controllers

import (
	"aftech-backend/repositories"
	"aftech-backend/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// filterParams names the query keys a listing reads its filter from.
type filterParams struct {
	region, customer, technician string
}

var (
	jobCardListParams = filterParams{"region", "customer", "technician"}
	reportParams      = filterParams{"region_id", "customer_id", "technician_id"}
)

func parseJobCardFilter(ctx *fiber.Ctx, p filterParams) (repositories.JobCardFilter, error) {
	var f repositories.JobCardFilter
	ve := &utils.ValidationError{}
	collect := func(err error) {
		var fe *utils.ValidationError
		if errors.As(err, &fe) {
			for k, v := range fe.Fields {
				ve.Add(k, v)
			}
		}
	}

	var err error
	f.RegionID, err = utils.ParseOptionalID(p.region, ctx.Query(p.region))
	collect(err)
	f.CustomerID, err = utils.ParseOptionalID(p.customer, ctx.Query(p.customer))
	collect(err)
	f.TechnicianID, err = utils.ParseOptionalID(p.technician, ctx.Query(p.technician))
	collect(err)
	f.StartDate, err = utils.ParseOptionalDate("start_date", ctx.Query("start_date"))
	collect(err)
	f.EndDate, err = utils.ParseOptionalDate("end_date", ctx.Query("end_date"))
	collect(err)

	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		ve.Add("end_date", "end_date must not be before start_date")
	}
	if !ve.Empty() {
		return f, ve
	}
	return f, nil
}
