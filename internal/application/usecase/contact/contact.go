package contact

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/domain"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

type Input struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Output tells the client where to send the message: a form endpoint it should
// POST to, or a mailto link it should open.
type Output struct {
	Method string `json:"method"`
	Action string `json:"action"`
}

const (
	MethodForm   = "form"
	MethodMailto = "mailto"
)

type ContactUseCase struct {
	store    *state.Store
	validate *validator.Validate
}

func NewContactUseCase(store *state.Store) *ContactUseCase {
	return &ContactUseCase{store: store, validate: domain.Validator()}
}

func (uc *ContactUseCase) Execute(_ context.Context, in Input) (*Output, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	p := uc.store.Current().Profile
	if action := strings.TrimSpace(p.FormActionURL); action != "" {
		return &Output{Method: MethodForm, Action: action}, nil
	}

	subject := "Portfolio Contact from " + in.Name
	body := fmt.Sprintf("Name: %s\r\nEmail: %s\r\n\r\nMessage:\r\n%s", in.Name, in.Email, in.Message)
	action := "mailto:" + p.Email + "?subject=" + mailtoEscape(subject) + "&body=" + mailtoEscape(body)
	return &Output{Method: MethodMailto, Action: action}, nil
}

// mailtoEscape percent-encodes v for a mailto query; spaces must be %20, not '+'.
func mailtoEscape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
