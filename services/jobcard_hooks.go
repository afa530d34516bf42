package services

import (
	"aftech-backend/config"
	"aftech-backend/models"
	"aftech-backend/repositories"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// PostCreateHook runs after a job card commits. Errors are logged only.
type PostCreateHook interface {
	Name() string
	AfterCreate(ctx context.Context, jobCard *models.JobCard) error
}

const newTrackingInstall = "NEW TRACKING INSTALL"

// InventoryLinkHook ties a new tracking install to the counted serial that
// matches the device IMEI.
type InventoryLinkHook struct {
	db *gorm.DB
}

func NewInventoryLinkHook(db *gorm.DB) *InventoryLinkHook {
	return &InventoryLinkHook{db: db}
}

func (h *InventoryLinkHook) Name() string { return "inventory-link" }

func (h *InventoryLinkHook) AfterCreate(ctx context.Context, jobCard *models.JobCard) error {
	if strings.ToUpper(strings.TrimSpace(jobCard.JobTypeName)) != newTrackingInstall {
		return nil
	}
	imei := strings.TrimSpace(jobCard.DeviceIMEI)
	if imei == "" {
		return nil
	}

	var serial models.StockTakeItemSerial
	err := h.db.WithContext(ctx).Where("serial_number = ?", imei).Order("id DESC").First(&serial).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		config.LogWarn(config.GetLogger(), "services", "InventoryLinkHook.AfterCreate",
			"no stock serial matches device IMEI", map[string]string{"imei": imei, "unique_id": jobCard.UniqueID})
		return nil
	}
	if err != nil {
		return err
	}

	return repositories.InsertChangeHistory(h.db.WithContext(ctx), models.EntitySerial, serial.ID, models.ActionInstalled,
		map[string]interface{}{
			"serial_number": serial.SerialNumber,
			"job_card_id":   jobCard.ID,
			"unique_id":     jobCard.UniqueID,
		}, jobCard.CreatedBy)
}

// MailSender is satisfied by *gomail.Dialer.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailNotifyHook struct {
	sender MailSender
	from   string
	to     []string
}

func NewEmailNotifyHook(sender MailSender, from string, to []string) *EmailNotifyHook {
	return &EmailNotifyHook{sender: sender, from: from, to: to}
}

func (h *EmailNotifyHook) Name() string { return "email-notify" }

func (h *EmailNotifyHook) AfterCreate(ctx context.Context, jobCard *models.JobCard) error {
	if len(h.to) == 0 {
		return nil
	}
	return h.sender.DialAndSend(buildJobCardMessage(h.from, h.to, jobCard))
}

func buildJobCardMessage(from string, to []string, jc *models.JobCard) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", fmt.Sprintf("Job card %s created", jc.UniqueID))

	var b strings.Builder
	b.WriteString("<h3>Job card " + html.EscapeString(jc.UniqueID) + "</h3><table>")
	row := func(label, value string) {
		b.WriteString("<tr><td><b>" + label + "</b></td><td>" + html.EscapeString(value) + "</td></tr>")
	}
	row("Region", jc.RegionName)
	row("Technician", jc.TechnicianName)
	row("Customer", jc.CustomerName)
	row("Job type", jc.JobTypeName)
	row("Support agent", jc.SupportAgentName)
	row("Device IMEI", jc.DeviceIMEI)
	row("Vehicle reg", jc.VehicleReg)
	row("Accessories", strings.Join(jc.AccessoryNames, ", "))
	b.WriteString("</table>")
	msg.SetBody("text/html", b.String())
	return msg
}

// DefaultHooks builds the hooks enabled by configuration.
func DefaultHooks(db *gorm.DB) []PostCreateHook {
	var hooks []PostCreateHook
	if config.InventoryLinkEnabled {
		hooks = append(hooks, NewInventoryLinkHook(db))
	}
	if config.SMTPHost != "" && len(config.NotifyEmails) > 0 {
		dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
		hooks = append(hooks, NewEmailNotifyHook(dialer, config.SMTPFrom, config.NotifyEmails))
	}
	return hooks
}
