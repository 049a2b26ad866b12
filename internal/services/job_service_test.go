package services

import (
	"testing"

	"refhub_backend/internal/appErrors"
	"refhub_backend/internal/models"
	"refhub_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobService_Create(t *testing.T) {
	env := newTestEnv(t)
	employee := env.addUser(t, models.UserRoleEmployee)

	job, err := env.jobSvc.Create(env.db, env.actorFor(employee), &dto.CreateJobRequest{
		Title:       "Senior Go Developer",
		ReferralFee: "1500.5",
		Currency:    "INR",
	})
	require.NoError(t, err)

	assert.Equal(t, employee.ID, job.PostedBy)
	assert.Equal(t, "1500.5000", job.ReferralFee)
	assert.True(t, job.IsActive)
}

func TestJobService_Create_SeekerForbidden(t *testing.T) {
	env := newTestEnv(t)
	seeker := env.addUser(t, models.UserRoleJobSeeker)

	_, err := env.jobSvc.Create(env.db, env.actorFor(seeker), &dto.CreateJobRequest{
		Title:       "Job",
		ReferralFee: "100",
		Currency:    "INR",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestJobService_Create_BadFee(t *testing.T) {
	env := newTestEnv(t)
	employee := env.addUser(t, models.UserRoleEmployee)

	for _, fee := range []string{"0", "-100", "abc"} {
		_, err := env.jobSvc.Create(env.db, env.actorFor(employee), &dto.CreateJobRequest{
			Title:       "Job",
			ReferralFee: fee,
			Currency:    "INR",
		})
		assert.Error(t, err, "сумма %q должна быть отвергнута", fee)
	}
}

func TestJobService_Deactivate(t *testing.T) {
	env := newTestEnv(t)
	employee := env.addUser(t, models.UserRoleEmployee)
	other := env.addUser(t, models.UserRoleEmployee)
	admin := env.addUser(t, models.UserRoleAdmin)
	job := env.addJob(t, employee.ID, "1000.0000")

	// Чужую вакансию снимает только админ
	err := env.jobSvc.Deactivate(env.db, env.actorFor(other), job.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	require.NoError(t, env.jobSvc.Deactivate(env.db, env.actorFor(admin), job.ID))

	stored, err := env.jobRepo.FindByID(nil, job.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	active, err := env.jobSvc.ListActive(env.db, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, active)
}
