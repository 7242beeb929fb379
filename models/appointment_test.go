package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveToken(t *testing.T) {
	assert.Equal(t, "TK-AB12", DeriveToken("ab12cd34"))
	assert.Equal(t, "TK-AB", DeriveToken("ab"))
	assert.Equal(t, "TK-", DeriveToken(""))
}

func TestAppointmentNormalizedAppliesDefaults(t *testing.T) {
	a := Appointment{ID: "ab12cd34"}.Normalized()

	assert.Equal(t, AppointmentStatusPending, a.Status)
	assert.Equal(t, "TK-AB12", a.Token)
	assert.Equal(t, DefaultAppointmentReason, a.Reason)
	assert.Equal(t, AppointmentPriorityMedium, a.Priority)
	assert.Equal(t, AppointmentTypeNew, a.Type)
	assert.Equal(t, DefaultAppointmentInsurance, a.Insurance)
	assert.Equal(t, 0, a.PreviousVisits)
	assert.NotNil(t, a.Symptoms)
	assert.Empty(t, a.Symptoms)
}

func TestAppointmentNormalizedKeepsExistingValues(t *testing.T) {
	a := Appointment{
		ID:        "ab12cd34",
		Status:    AppointmentStatusConfirmed,
		Token:     "TK-CUSTOM",
		Reason:    "follow up on labs",
		Priority:  AppointmentPriorityHigh,
		Type:      AppointmentTypeReview,
		Insurance: "Acme Health",
		Symptoms:  []string{"cough"},
	}.Normalized()

	assert.Equal(t, AppointmentStatusConfirmed, a.Status)
	assert.Equal(t, "TK-CUSTOM", a.Token)
	assert.Equal(t, "follow up on labs", a.Reason)
	assert.Equal(t, AppointmentPriorityHigh, a.Priority)
	assert.Equal(t, AppointmentTypeReview, a.Type)
	assert.Equal(t, "Acme Health", a.Insurance)
	assert.Equal(t, []string{"cough"}, a.Symptoms)
}
