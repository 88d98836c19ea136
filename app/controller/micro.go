package controller

import (
	"math"
	"math/rand/v2"
	"strconv"

	gohttp "github.com/km-arc/go-rio/framework/http"
	"github.com/km-arc/go-rio/framework/http/validation"
)

// MicroController serves the random number page.
type MicroController struct {
	view *gohttp.ViewEngine
	intn func(n int) int
}

// NewMicroController creates a MicroController rendering with view.
func NewMicroController(view *gohttp.ViewEngine) *MicroController {
	return &MicroController{view: view, intn: rand.IntN}
}

// RandomNumber handles GET /random/{limit}. It renders a number in
// [0, limit], or answers 422 when limit is not a non-negative integer.
func (mc *MicroController) RandomNumber(_ *gohttp.Request, res *gohttp.Response, args map[string]string) (*gohttp.Response, error) {
	v := validation.Make(args, validation.Rules{"limit": "required|integer|gte:0"})
	if v.Fails() {
		return res, res.ValidationError(v.Errors())
	}
	limit, err := strconv.Atoi(args["limit"])
	if err != nil {
		return nil, err
	}

	number := rand.Int()
	if limit < math.MaxInt {
		number = mc.intn(limit + 1)
	}
	return res, mc.view.RenderWithLayout(res, "layout", "micro/random", map[string]any{
		"number": number,
	})
}

// Goodbye handles GET /.
func Goodbye(_ *gohttp.Request, res *gohttp.Response, _ map[string]string) (*gohttp.Response, error) {
	_, err := res.WriteString("Goodbye!")
	return res, err
}
