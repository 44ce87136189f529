package service

import (
	"testing"
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(u *model.User) error {
	f.users[u.UserId] = u
	return nil
}

func (f *fakeUserRepo) UpdateUser(string, map[string]interface{}) error { return nil }
func (f *fakeUserRepo) DeleteUser(userId string) error {
	delete(f.users, userId)
	return nil
}

func (f *fakeUserRepo) GetUserById(userId string) (*model.User, error) {
	u, ok := f.users[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ListUsers(int, int) ([]*model.User, int64, error) { return nil, 0, nil }
func (f *fakeUserRepo) CheckEmailExists(email string) (bool, error) {
	_, err := f.GetUserByEmail(email)
	return err == nil, nil
}
func (f *fakeUserRepo) SetVaultPinHash(userId, hash string) error {
	if u, ok := f.users[userId]; ok {
		u.VaultPinHash = hash
	}
	return nil
}
func (f *fakeUserRepo) CacheToken(string, string, time.Duration) error { return nil }
func (f *fakeUserRepo) DeleteToken(string) error                       { return nil }
func (f *fakeUserRepo) CacheUserInfo(string, *model.UserInfo, time.Duration) error {
	return nil
}

// fakeInviteRepo 通过持有 team/access 假仓库模拟事务副作用
type fakeInviteRepo struct {
	invites    map[string]*model.TeamInvite
	teamRepo   *fakeTeamRepo
	accessRepo *fakeAccessRepo
}

func newFakeInviteRepo(teamRepo *fakeTeamRepo, accessRepo *fakeAccessRepo) *fakeInviteRepo {
	return &fakeInviteRepo{
		invites:    make(map[string]*model.TeamInvite),
		teamRepo:   teamRepo,
		accessRepo: accessRepo,
	}
}

func (f *fakeInviteRepo) CreateInvite(inv *model.TeamInvite) error {
	f.invites[inv.Token] = inv
	return nil
}

func (f *fakeInviteRepo) GetByToken(token string) (*model.TeamInvite, error) {
	inv, ok := f.invites[token]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInviteRepo) ListByTeam(teamId string) ([]*model.TeamInvite, error) {
	var out []*model.TeamInvite
	for _, inv := range f.invites {
		if inv.TeamId == teamId {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInviteRepo) HasPendingByEmail(teamId, email string) (bool, error) {
	for _, inv := range f.invites {
		if inv.TeamId == teamId && inv.Email == email && inv.Status == model.InviteStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInviteRepo) AcceptTeamInvite(inv *model.TeamInvite, member *model.TeamMember) error {
	if err := f.teamRepo.AddMember(member); err != nil {
		return err
	}
	if inv.ProjectId != "" {
		if err := f.accessRepo.RevokeAccess(inv.ProjectId, member.UserId); err != nil {
			return err
		}
	}
	f.invites[inv.Token].Status = model.InviteStatusAccepted
	return nil
}

func (f *fakeInviteRepo) AcceptClientInvite(inv *model.TeamInvite, access *model.ProjectAccess) error {
	existing, _ := f.accessRepo.GetAccess(access.ProjectId, access.UserId)
	if existing == nil {
		if err := f.accessRepo.UpsertAccess(access); err != nil {
			return err
		}
	}
	f.invites[inv.Token].Status = model.InviteStatusAccepted
	return nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) EnqueueInviteEmail(email, token, teamName string) error {
	f.sent = append(f.sent, email)
	return nil
}

func newInviteFixture(t *testing.T) (*InviteService, *fakeInviteRepo, *fakeTeamRepo, *fakeAccessRepo, *fakeUserRepo, *fakeNotifier) {
	t.Helper()
	tenantSvc, teamRepo, accessRepo, _ := newTenantFixture(t)

	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.CreateUser(&model.User{UserId: "owner", Email: "owner@studio.dev"}))
	require.NoError(t, userRepo.CreateUser(&model.User{UserId: "newbie", Email: "newbie@studio.dev"}))
	require.NoError(t, userRepo.CreateUser(&model.User{UserId: "ext", Email: "ext@client.dev"}))

	inviteRepo := newFakeInviteRepo(teamRepo, accessRepo)
	notifier := &fakeNotifier{}
	svc := NewInviteService(inviteRepo, teamRepo, userRepo, tenantSvc, notifier)
	return svc, inviteRepo, teamRepo, accessRepo, userRepo, notifier
}

func TestCreateInviteOwnerOnly(t *testing.T) {
	svc, _, _, _, _, notifier := newInviteFixture(t)

	_, err := svc.CreateInvite("t1", "member", &model.CreateInviteReq{
		Email: "newbie@studio.dev", Type: model.InviteTypeTeam,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	inv, err := svc.CreateInvite("t1", "owner", &model.CreateInviteReq{
		Email: "newbie@studio.dev", Type: model.InviteTypeTeam,
	})
	require.NoError(t, err)
	assert.Equal(t, model.InviteStatusPending, inv.Status)
	assert.Equal(t, []string{"newbie@studio.dev"}, notifier.sent)

	// 同邮箱存在 PENDING 邀请时拒绝
	_, err = svc.CreateInvite("t1", "owner", &model.CreateInviteReq{
		Email: "newbie@studio.dev", Type: model.InviteTypeTeam,
	})
	assert.ErrorIs(t, err, ErrInvitePending)
}

func TestAcceptTeamInvite(t *testing.T) {
	svc, _, teamRepo, _, _, _ := newInviteFixture(t)

	inv, err := svc.CreateInvite("t1", "owner", &model.CreateInviteReq{
		Email: "newbie@studio.dev", Type: model.InviteTypeTeam,
	})
	require.NoError(t, err)

	accepted, err := svc.AcceptInvite("newbie", inv.Token)
	require.NoError(t, err)
	assert.Equal(t, model.InviteStatusAccepted, accepted.Status)

	m, err := teamRepo.GetMember("t1", "newbie")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, model.TeamRoleMember, m.Role)

	// 重复接受: 令牌已非 PENDING, 报无效但状态不回退
	_, err = svc.AcceptInvite("newbie", inv.Token)
	assert.ErrorIs(t, err, ErrInviteInvalid)
	members, err := teamRepo.ListMembers("t1")
	require.NoError(t, err)
	assert.Len(t, members, 3) // owner + member + newbie, 无重复行
}

func TestAcceptClientInvite(t *testing.T) {
	svc, _, teamRepo, accessRepo, _, _ := newInviteFixture(t)

	inv, err := svc.CreateInvite("t1", "owner", &model.CreateInviteReq{
		Email: "ext@client.dev", Type: model.InviteTypeProjectClient, ProjectId: "p2",
	})
	require.NoError(t, err)

	_, err = svc.AcceptInvite("ext", inv.Token)
	require.NoError(t, err)

	// 客户拿到单项目 READ, 不成为团队成员
	row, err := accessRepo.GetAccess("p2", "ext")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, model.AccessRead, row.AccessLevel)
	assert.Equal(t, model.ProjectRoleClient, row.Role)

	m, err := teamRepo.GetMember("t1", "ext")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestAcceptInviteGuards(t *testing.T) {
	svc, inviteRepo, _, _, _, _ := newInviteFixture(t)

	// 未知令牌
	_, err := svc.AcceptInvite("newbie", "no-such-token")
	assert.ErrorIs(t, err, ErrInviteInvalid)

	inv, err := svc.CreateInvite("t1", "owner", &model.CreateInviteReq{
		Email: "newbie@studio.dev", Type: model.InviteTypeTeam,
	})
	require.NoError(t, err)

	// 邮箱不匹配
	_, err = svc.AcceptInvite("ext", inv.Token)
	assert.ErrorIs(t, err, ErrInviteMismatch)

	// 过期: 读取即失败, 状态保持 PENDING 不落库
	inviteRepo.invites[inv.Token].ExpiresAt = time.Now().Add(-time.Hour)
	_, err = svc.AcceptInvite("newbie", inv.Token)
	assert.ErrorIs(t, err, ErrInviteExpired)
	assert.Equal(t, model.InviteStatusPending, inviteRepo.invites[inv.Token].Status)
}
