package main

import (
	"errors"
	"fmt"

	"github.com/go-extras/cobraflags"
)

func positive(v int) error {
	if v <= 0 {
		return errors.New("must be a positive number")
	}
	return nil
}

func notNegative(v int) error {
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// optionalID reads an id flag where 0 means not given.
func optionalID(name string, flag cobraflags.Flag) (*uint, error) {
	v, err := flag.GetIntE()
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	if v == 0 {
		return nil, nil
	}
	id := uint(v)
	return &id, nil
}
