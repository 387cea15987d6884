package services

import (
	"testing"
	"time"

	"github.com/denilsonbarahona/residencia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvitation(t *testing.T) {
	db := newTestDB(t)
	invitationService := NewInvitationService(db, newTestConfig())

	before := time.Now()
	invitation, link, err := invitationService.CreateInvitation(1, "resident@example.com")
	require.NoError(t, err)

	assert.Equal(t, models.InvitationStatusPending, invitation.Status)
	assert.NotEmpty(t, invitation.Token)
	// 邀请有效期为7天
	assert.WithinDuration(t, before.Add(7*24*time.Hour), invitation.ExpiresAt, 5*time.Second)
	assert.Equal(t, "http://localhost:3000/invitation/accept?token="+invitation.Token, link)
}

func TestVerifyInvitation(t *testing.T) {
	db := newTestDB(t)
	invitationService := NewInvitationService(db, newTestConfig())

	invitation, _, err := invitationService.CreateInvitation(1, "resident@example.com")
	require.NoError(t, err)

	verified, err := invitationService.VerifyInvitation(invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, invitation.ID, verified.ID)

	// 不存在的令牌
	_, err = invitationService.VerifyInvitation("no-such-token")
	require.Error(t, err)
	assert.Equal(t, "invitation not found", err.Error())

	// 已接受的邀请不可重复使用
	require.NoError(t, invitationService.UpdateInvitation(invitation.ID, map[string]interface{}{
		"status": models.InvitationStatusAccepted,
	}))
	_, err = invitationService.VerifyInvitation(invitation.Token)
	require.Error(t, err)
	assert.Equal(t, "invitation already used or expired", err.Error())
}

func TestVerifyInvitationExpired(t *testing.T) {
	db := newTestDB(t)
	invitationService := NewInvitationService(db, newTestConfig())

	invitation, _, err := invitationService.CreateInvitation(1, "resident@example.com")
	require.NoError(t, err)

	// 过期按墙上时钟判断，存储状态仍是pending
	require.NoError(t, invitationService.UpdateInvitation(invitation.ID, map[string]interface{}{
		"expires_at": time.Now().Add(-time.Minute),
	}))

	_, err = invitationService.VerifyInvitation(invitation.Token)
	require.Error(t, err)
	assert.Equal(t, "invitation has expired", err.Error())

	stored, err := invitationService.GetInvitationByID(invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusPending, stored.Status)
}

func TestAcceptInvitation(t *testing.T) {
	db := newTestDB(t)
	invitationService := NewInvitationService(db, newTestConfig())

	invitation, _, err := invitationService.CreateInvitation(1, "resident@example.com")
	require.NoError(t, err)

	user, err := invitationService.AcceptInvitation(&AcceptInvitationInput{
		Token:     invitation.Token,
		Name:      "Jane Roe",
		Password:  "secret123",
		Apartment: "4B",
	})
	require.NoError(t, err)

	// 账户邮箱来自邀请本身，不接受调用方传入
	assert.Equal(t, "resident@example.com", user.Email)
	assert.Equal(t, models.RoleResident, user.Role)
	assert.Equal(t, uint(1), user.ResidentialID)
	assert.Equal(t, "4B", user.Apartment)
	assert.True(t, user.Active)

	// 密码在创建钩子中被哈希
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, models.CheckPasswordHash("secret123", stored.Password))

	// 邀请被标记为accepted
	storedInvitation, err := invitationService.GetInvitationByID(invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusAccepted, storedInvitation.Status)

	// 同一邀请不可二次使用
	_, err = invitationService.AcceptInvitation(&AcceptInvitationInput{
		Token:    invitation.Token,
		Name:     "Jane Roe",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, "invitation already used or expired", err.Error())
}

func TestAcceptInvitationDefaultApartment(t *testing.T) {
	db := newTestDB(t)
	invitationService := NewInvitationService(db, newTestConfig())

	invitation, _, err := invitationService.CreateInvitation(1, "resident@example.com")
	require.NoError(t, err)

	user, err := invitationService.AcceptInvitation(&AcceptInvitationInput{
		Token:    invitation.Token,
		Name:     "Jane Roe",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "N/A", user.Apartment)
}

func TestAcceptInvitationEmailInUse(t *testing.T) {
	db := newTestDB(t)
	invitationService := NewInvitationService(db, newTestConfig())

	seedResident(t, db, 1, "resident@example.com")

	invitation, _, err := invitationService.CreateInvitation(1, "resident@example.com")
	require.NoError(t, err)

	_, err = invitationService.AcceptInvitation(&AcceptInvitationInput{
		Token:    invitation.Token,
		Name:     "Jane Roe",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, "email already in use", err.Error())

	// 拒绝时不创建用户，邀请保持pending
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := invitationService.GetInvitationByID(invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusPending, stored.Status)
}

func TestGetInvitationsByResidentialNewestFirst(t *testing.T) {
	db := newTestDB(t)
	invitationService := NewInvitationService(db, newTestConfig())

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		invitation := &models.Invitation{
			ResidentialID: 1,
			Email:         "r@example.com",
			Token:         "token-" + string(rune('a'+i)),
			Status:        models.InvitationStatusPending,
			ExpiresAt:     time.Now().Add(7 * 24 * time.Hour),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(invitation).Error)
	}

	invitations, err := invitationService.GetInvitationsByResidential(1)
	require.NoError(t, err)
	require.Len(t, invitations, 3)

	for i := 1; i < len(invitations); i++ {
		assert.True(t, invitations[i-1].CreatedAt.After(invitations[i].CreatedAt),
			"邀请应按创建时间降序排列")
	}
}
