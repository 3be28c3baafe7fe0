package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core"
)

// requestValidator plugs core.Validator into echo.Context.Validate.
type requestValidator struct {
	v *core.Validator
}

func (rv requestValidator) Validate(i interface{}) error {
	return rv.v.Validate(i)
}

// bind decodes the request into data then validates it.
func bind(ctx echo.Context, data interface{}, name string) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to "+name)
	}
	return ctx.Validate(data)
}

func queryBool(ctx echo.Context, name string) bool {
	b, _ := strconv.ParseBool(ctx.QueryParam(name))
	return b
}

func queryInt(ctx echo.Context, name string, fallback int) int {
	n, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return fallback
	}
	return n
}
