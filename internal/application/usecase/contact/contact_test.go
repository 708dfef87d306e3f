package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/domain"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func newContact(p profile.Profile) *ContactUseCase {
	store := state.NewStore(persistence.NewMemoryStorage(), content.Snapshot{
		LastUpdated: 1,
		State:       content.State{Profile: p, ResumeURL: content.NoResume},
	}, nil, logger.NewNop())
	return NewContactUseCase(store)
}

func TestContactMailto(t *testing.T) {
	uc := newContact(profile.Profile{Name: "Ada", Email: "ada@example.com"})

	out, err := uc.Execute(context.Background(), Input{Name: "Bob Smith", Email: "bob@example.com", Message: "Hi there"})
	require.NoError(t, err)
	assert.Equal(t, MethodMailto, out.Method)
	assert.Equal(t,
		"mailto:ada@example.com?subject=Portfolio%20Contact%20from%20Bob%20Smith"+
			"&body=Name%3A%20Bob%20Smith%0D%0AEmail%3A%20bob%40example.com%0D%0A%0D%0AMessage%3A%0D%0AHi%20there",
		out.Action)
}

func TestContactFormAction(t *testing.T) {
	uc := newContact(profile.Profile{Name: "Ada", Email: "ada@example.com", FormActionURL: " https://formspree.io/f/abc "})

	out, err := uc.Execute(context.Background(), Input{Name: "Bob", Email: "bob@example.com", Message: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, &Output{Method: MethodForm, Action: "https://formspree.io/f/abc"}, out)
}

func TestContactRequiresAllFields(t *testing.T) {
	uc := newContact(profile.Profile{Name: "Ada", Email: "ada@example.com"})
	for _, in := range []Input{
		{Email: "bob@example.com", Message: "Hi"},
		{Name: "Bob", Email: "not-an-email", Message: "Hi"},
		{Name: "Bob", Email: "bob@example.com"},
	} {
		_, err := uc.Execute(context.Background(), in)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	}
}

func TestContactUsesSharedValidator(t *testing.T) {
	uc := newContact(profile.Profile{Name: "Ada", Email: "ada@example.com"})
	assert.Same(t, domain.Validator(), uc.validate)
}
