package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Configuration is the optional rc file, loaded before the first line is
// read. Everything in it is expressible from within the shell; the file
// only saves typing it each session.
type Configuration struct {
	// Prompt seeds PROMPT before the first interactive prompt.
	Prompt string `json:"prompt"`
	// Path overrides PATH for the session.
	Path string `json:"path"`
	// Env holds extra variables installed into the environment.
	Env map[string]string `json:"env" validate:"dive,keys,required,endkeys"`
	// Source lists scripts driven through the interpreter at startup.
	Source []string `json:"source" validate:"dive,required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}
