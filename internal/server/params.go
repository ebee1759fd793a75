package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/davseby/asyncapi-importer/internal/catalog"
	"github.com/davseby/asyncapi-importer/internal/importer"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// _validate is the validator of the request parameters and bodies.
var _validate *validator.Validate

func init() {
	_validate = validator.New()

	// NOTE: Problems are reported with the names the caller used.
	_validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.Split(field.Tag.Get(tag), ",")[0]
			if name != "" && name != "-" {
				return name
			}
		}

		return field.Name
	})

	_ = _validate.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return catalog.ValidRegion(fl.Field().String())
	})

	_ = _validate.RegisterValidation("strategy", func(fl validator.FieldLevel) bool {
		_, err := importer.ParseStrategy(fl.Field().String())
		return err == nil
	})

	_validate.RegisterStructValidation(validateDomain, importQuery{})
}

// validateDomain requires exactly one non-blank application domain
// identifier.
func validateDomain(sl validator.StructLevel) {
	q := sl.Current().Interface().(importQuery)

	id, name := q.domainID(), q.domainName()

	switch {
	case id == "" && name == "":
		sl.ReportError(q.AppDomainID, "appDomainId", "AppDomainID", "required_without", "AppDomainName")
	case id != "" && name != "":
		sl.ReportError(q.AppDomainID, "appDomainId", "AppDomainID", "excluded_with", "AppDomainName")
	}
}

// ValidationError is returned when the request parameters or body are
// malformed or contradictory.
type ValidationError struct {
	// Problems describes every rejected value.
	Problems []string
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Problems, "; ")
}

// regionQuery selects the cloud API base URL.
type regionQuery struct {
	URLRegion   string `form:"urlRegion" validate:"region"`
	URLOverride string `form:"urlOverride" validate:"omitempty,url"`
}

// baseURL resolves the cloud API base URL.
func (q regionQuery) baseURL() (string, error) {
	return catalog.ResolveURL(q.URLRegion, q.URLOverride)
}

// importQuery holds the import parameters.
type importQuery struct {
	regionQuery

	AppDomainID          string `form:"appDomainId"`
	AppDomainName        string `form:"appDomainName"`
	NewVersionStrategy   string `form:"newVersionStrategy" validate:"strategy"`
	EventsOnly           bool   `form:"eventsOnly"`
	DisableCascadeUpdate bool   `form:"disableCascadeUpdate"`
	CreateEventAPI       bool   `form:"createEventApi"`
}

// domainID returns the trimmed application domain id.
func (q importQuery) domainID() string {
	return strings.TrimSpace(q.AppDomainID)
}

// domainName returns the trimmed application domain name.
func (q importQuery) domainName() string {
	return strings.TrimSpace(q.AppDomainName)
}

// options converts the query to import options.
func (q importQuery) options() (importer.Options, error) {
	strategy, err := importer.ParseStrategy(q.NewVersionStrategy)
	if err != nil {
		return importer.Options{}, err
	}

	return importer.Options{
		DomainID:             q.domainID(),
		DomainName:           q.domainName(),
		Strategy:             strategy,
		EventsOnly:           q.EventsOnly,
		DisableCascadeUpdate: q.DisableCascadeUpdate,
		CreateEventAPI:       q.CreateEventAPI,
	}, nil
}

// tokenBody is the body of the token-only endpoints.
type tokenBody struct {
	EPToken string `json:"epToken" validate:"required,base64"`
}

// token returns the decoded token.
func (b tokenBody) token() string {
	return decode(b.EPToken)
}

// importBody is the body of the import endpoint.
type importBody struct {
	EPToken      string `json:"epToken" validate:"required,base64"`
	AsyncAPISpec string `json:"asyncApiSpec" validate:"required,base64"`
}

// token returns the decoded token.
func (b importBody) token() string {
	return decode(b.EPToken)
}

// document returns the decoded document.
func (b importBody) document() []byte {
	return []byte(decode(b.AsyncAPISpec))
}

// decode decodes an already validated base64 value.
func decode(v string) string {
	raw, _ := base64.StdEncoding.DecodeString(v)
	return string(raw)
}

// bind binds and validates the query parameters and the JSON body. All
// problems are reported at once.
func bind(c *gin.Context, query, body any) error {
	var problems []string

	if err := c.ShouldBindQuery(query); err != nil {
		problems = append(problems, fmt.Sprintf("malformed query parameters: %s", err))
	} else {
		problems = append(problems, validate(query)...)
	}

	if err := c.ShouldBindJSON(body); err != nil {
		problems = append(problems, fmt.Sprintf("malformed request body: %s", err))
	} else {
		problems = append(problems, validate(body)...)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}

	return nil
}

// validate returns the problems found by the validator.
func validate(v any) []string {
	err := _validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	var problems []string

	seen := make(map[string]struct{}, len(verrs))
	for _, fe := range verrs {
		problem := describe(fe)
		if _, ok := seen[problem]; ok {
			continue
		}

		seen[problem] = struct{}{}
		problems = append(problems, problem)
	}

	return problems
}

// describe returns a human readable description of a failed rule.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "required_without":
		return "either appDomainId or appDomainName is required"
	case "excluded_with":
		return "appDomainId and appDomainName are mutually exclusive"
	case "base64":
		return fmt.Sprintf("%s must be base64 encoded", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "region":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(catalog.Regions(), ", "))
	case "strategy":
		return fmt.Sprintf("%s must be one of MAJOR, MINOR, PATCH", fe.Field())
	default:
		return fmt.Sprintf("%s failed on the %s rule", fe.Field(), fe.Tag())
	}
}
