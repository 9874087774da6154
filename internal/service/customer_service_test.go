package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upeohq/backoffice-backend/internal/model"
	"github.com/upeohq/backoffice-backend/internal/repository"
)

func newCustomerFixture(leads ...*model.Lead) (*CustomerService, *fakeLeadStore, *fakeConversionStore) {
	leadStore := newFakeLeadStore(leads...)
	conversions := &fakeConversionStore{}
	svc := NewCustomerService(newFakeCustomerStore(), leadStore, conversions, zerolog.Nop())
	return svc, leadStore, conversions
}

func TestConvertLead(t *testing.T) {
	t.Parallel()

	lead := &model.Lead{
		Name:        "Wanjiru Mwangi",
		Email:       "wanjiru@acme.co.ke",
		Phone:       "+254711000000",
		CompanyName: "Acme Ltd",
		Status:      model.LeadStatusInProgress,
	}
	svc, leadStore, conversions := newCustomerFixture(lead)
	ctx := context.Background()
	converter := uuid.New()

	customer, err := svc.ConvertLead(ctx, converter, &model.ConvertLeadRequest{
		LeadID: lead.ID,
		Notes:  "Signed annual contract",
	})
	require.NoError(t, err)

	// Customer copies the lead's contact fields and starts ACTIVE.
	assert.Equal(t, lead.Name, customer.Name)
	assert.Equal(t, lead.Email, customer.Email)
	assert.Equal(t, lead.CompanyName, customer.CompanyName)
	assert.Equal(t, model.CustomerStatusActive, customer.Status)

	// Lead is marked CONVERTED.
	updated, err := leadStore.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusConverted, updated.Status)

	// One INITIAL conversion record.
	require.Len(t, conversions.histories, 1)
	history := conversions.histories[0]
	assert.Equal(t, lead.ID, history.LeadID)
	assert.Equal(t, customer.ID, history.CustomerID)
	assert.Equal(t, converter, history.ConvertedBy)
	assert.Equal(t, model.ConversionInitial, history.ConversionType)
	assert.Equal(t, "Signed annual contract", history.Notes)
}

func TestConvertLeadRejectsClosedStates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status model.LeadStatus
	}{
		{"converted", model.LeadStatusConverted},
		{"closed", model.LeadStatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lead := &model.Lead{Name: "X", Email: tt.name + "@example.com", Status: tt.status}
			svc, _, _ := newCustomerFixture(lead)

			_, err := svc.ConvertLead(context.Background(), uuid.New(), &model.ConvertLeadRequest{LeadID: lead.ID})
			assert.ErrorIs(t, err, ErrLeadNotConvertible)
		})
	}
}

func TestConvertLeadUnknownLead(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCustomerFixture()

	_, err := svc.ConvertLead(context.Background(), uuid.New(), &model.ConvertLeadRequest{LeadID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConvertLeadRepeat(t *testing.T) {
	t.Parallel()

	lead := &model.Lead{Name: "Y", Email: "repeat@example.com", Status: model.LeadStatusNew}
	svc, leadStore, conversions := newCustomerFixture(lead)
	ctx := context.Background()

	_, err := svc.ConvertLead(ctx, uuid.New(), &model.ConvertLeadRequest{LeadID: lead.ID})
	require.NoError(t, err)

	// Re-opened leads convert again as REPEAT.
	require.NoError(t, leadStore.UpdateStatus(ctx, lead.ID, model.LeadStatusInProgress))

	_, err = svc.ConvertLead(ctx, uuid.New(), &model.ConvertLeadRequest{LeadID: lead.ID})
	require.NoError(t, err)

	require.Len(t, conversions.histories, 2)
	assert.Equal(t, model.ConversionInitial, conversions.histories[0].ConversionType)
	assert.Equal(t, model.ConversionRepeat, conversions.histories[1].ConversionType)
}
