package service

import (
	"testing"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// in-memory fakes

type fakeTeamRepo struct {
	teams   map[string]*model.Team
	members []*model.TeamMember
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*model.Team)}
}

func (f *fakeTeamRepo) CreateTeam(t *model.Team, m *model.TeamMember) error {
	f.teams[t.TeamId] = t
	f.members = append(f.members, m)
	return nil
}

func (f *fakeTeamRepo) UpdateTeam(string, map[string]interface{}) error { return nil }
func (f *fakeTeamRepo) DeleteTeam(string) error                         { return nil }

func (f *fakeTeamRepo) GetTeamById(teamId string) (*model.Team, error) {
	t, ok := f.teams[teamId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTeamRepo) GetTeamsByUserId(userId string) ([]*model.Team, error) {
	var out []*model.Team
	for _, m := range f.members {
		if m.UserId == userId {
			if t, ok := f.teams[m.TeamId]; ok {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) CheckTeamExists(teamId string) (bool, error) {
	_, ok := f.teams[teamId]
	return ok, nil
}

func (f *fakeTeamRepo) AddMember(m *model.TeamMember) error {
	for _, existing := range f.members {
		if existing.TeamId == m.TeamId && existing.UserId == m.UserId {
			return nil
		}
	}
	f.members = append(f.members, m)
	return nil
}

func (f *fakeTeamRepo) RemoveMember(teamId, userId string) error {
	out := f.members[:0]
	for _, m := range f.members {
		if !(m.TeamId == teamId && m.UserId == userId) {
			out = append(out, m)
		}
	}
	f.members = out
	return nil
}

func (f *fakeTeamRepo) GetMember(teamId, userId string) (*model.TeamMember, error) {
	for _, m := range f.members {
		if m.TeamId == teamId && m.UserId == userId {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamRepo) ListMembers(teamId string) ([]*model.TeamMember, error) {
	var out []*model.TeamMember
	for _, m := range f.members {
		if m.TeamId == teamId {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) ListMemberships(userId string) ([]*model.TeamMember, error) {
	var out []*model.TeamMember
	for _, m := range f.members {
		if m.UserId == userId {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProjectRepo struct {
	projects map[string]*model.Project
	order    []string
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*model.Project)}
}

func (f *fakeProjectRepo) CreateProject(p *model.Project) error {
	f.projects[p.ProjectId] = p
	f.order = append(f.order, p.ProjectId)
	return nil
}

func (f *fakeProjectRepo) UpdateProject(string, map[string]interface{}) error { return nil }
func (f *fakeProjectRepo) DeleteProject(string) error                         { return nil }

func (f *fakeProjectRepo) GetProjectById(projectId string) (*model.Project, error) {
	p, ok := f.projects[projectId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProjectRepo) GetProjectsByTeamId(teamId string) ([]*model.Project, error) {
	var out []*model.Project
	for _, id := range f.order {
		if f.projects[id].TeamId == teamId {
			out = append(out, f.projects[id])
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) GetProjectsByIds(projectIds []string) ([]*model.Project, error) {
	var out []*model.Project
	for _, id := range projectIds {
		if p, ok := f.projects[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAccessRepo struct {
	rows []*model.ProjectAccess
}

func (f *fakeAccessRepo) UpsertAccess(a *model.ProjectAccess) error {
	for _, row := range f.rows {
		if row.ProjectId == a.ProjectId && row.UserId == a.UserId {
			row.AccessLevel = a.AccessLevel
			row.Role = a.Role
			return nil
		}
	}
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeAccessRepo) RevokeAccess(projectId, userId string) error {
	out := f.rows[:0]
	for _, row := range f.rows {
		if !(row.ProjectId == projectId && row.UserId == userId) {
			out = append(out, row)
		}
	}
	f.rows = out
	return nil
}

func (f *fakeAccessRepo) GetAccess(projectId, userId string) (*model.ProjectAccess, error) {
	for _, row := range f.rows {
		if row.ProjectId == projectId && row.UserId == userId {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeAccessRepo) ListByUser(userId string) ([]*model.ProjectAccess, error) {
	var out []*model.ProjectAccess
	for _, row := range f.rows {
		if row.UserId == userId {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAccessRepo) ListByProject(projectId string) ([]*model.ProjectAccess, error) {
	var out []*model.ProjectAccess
	for _, row := range f.rows {
		if row.ProjectId == projectId {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakePermRepo struct {
	perms map[string]*model.UserPermission
}

func newFakePermRepo() *fakePermRepo {
	return &fakePermRepo{perms: make(map[string]*model.UserPermission)}
}

func (f *fakePermRepo) UpsertPermission(p *model.UserPermission) error {
	f.perms[p.UserId] = p
	return nil
}

func (f *fakePermRepo) GetByUserId(userId string) (*model.UserPermission, error) {
	return f.perms[userId], nil
}

// fixture: team "t1" owned by "owner", member "member", client "client"
// projects "p1" and "p2"; client has READ row on p1, member has EDIT row on p2
func newTenantFixture(t *testing.T) (*TenantService, *fakeTeamRepo, *fakeAccessRepo, *fakePermRepo) {
	t.Helper()
	teamRepo := newFakeTeamRepo()
	projectRepo := newFakeProjectRepo()
	accessRepo := &fakeAccessRepo{}
	permRepo := newFakePermRepo()

	require.NoError(t, teamRepo.CreateTeam(
		&model.Team{TeamId: "t1", Name: "Studio", OwnerId: "owner", IsEnabled: 1},
		&model.TeamMember{TeamId: "t1", UserId: "owner", Role: model.TeamRoleOwner},
	))
	require.NoError(t, teamRepo.AddMember(&model.TeamMember{TeamId: "t1", UserId: "member", Role: model.TeamRoleMember}))

	require.NoError(t, projectRepo.CreateProject(&model.Project{ProjectId: "p1", TeamId: "t1", Name: "Website"}))
	require.NoError(t, projectRepo.CreateProject(&model.Project{ProjectId: "p2", TeamId: "t1", Name: "App"}))

	require.NoError(t, accessRepo.UpsertAccess(&model.ProjectAccess{
		ProjectId: "p1", UserId: "client", AccessLevel: model.AccessRead, Role: model.ProjectRoleClient,
	}))
	require.NoError(t, accessRepo.UpsertAccess(&model.ProjectAccess{
		ProjectId: "p2", UserId: "member", AccessLevel: model.AccessEdit, Role: model.ProjectRoleMember,
	}))

	return NewTenantService(teamRepo, projectRepo, accessRepo, permRepo), teamRepo, accessRepo, permRepo
}

func TestResolveWorkspaceCookiePriority(t *testing.T) {
	svc, teamRepo, _, _ := newTenantFixture(t)
	require.NoError(t, teamRepo.CreateTeam(
		&model.Team{TeamId: "t2", Name: "Second", OwnerId: "member", IsEnabled: 1},
		&model.TeamMember{TeamId: "t2", UserId: "member", Role: model.TeamRoleOwner},
	))

	// cookie 指向有效成员关系的团队
	team, err := svc.ResolveWorkspace("member", "t2")
	require.NoError(t, err)
	assert.Equal(t, "t2", team.TeamId)

	// cookie 指向无成员关系的团队时不生效, 无任何成员关系返回 nil
	team, err = svc.ResolveWorkspace("client", "t1")
	require.NoError(t, err)
	assert.Nil(t, team)

	// 无 cookie 取第一个成员关系
	team, err = svc.ResolveWorkspace("member", "")
	require.NoError(t, err)
	assert.Equal(t, "t1", team.TeamId)
}

func TestProjectScopeOwner(t *testing.T) {
	svc, _, _, _ := newTenantFixture(t)

	scope, err := svc.ProjectScope("owner", "t1")
	require.NoError(t, err)
	assert.True(t, scope.IsOwner)
	assert.ElementsMatch(t, []string{"p1", "p2"}, scope.ProjectIds)
	assert.Equal(t, model.AccessEdit, scope.AccessMap["p1"])
	assert.Equal(t, model.AccessEdit, scope.AccessMap["p2"])
}

func TestProjectScopeMemberOverlay(t *testing.T) {
	svc, _, _, _ := newTenantFixture(t)

	scope, err := svc.ProjectScope("member", "t1")
	require.NoError(t, err)
	assert.False(t, scope.IsOwner)
	// 成员默认 READ, 显式 EDIT 行覆盖
	assert.Equal(t, model.AccessRead, scope.AccessMap["p1"])
	assert.Equal(t, model.AccessEdit, scope.AccessMap["p2"])
}

func TestProjectScopeClient(t *testing.T) {
	svc, _, _, _ := newTenantFixture(t)

	scope, err := svc.ProjectScope("client", "t1")
	require.NoError(t, err)
	assert.False(t, scope.IsOwner)
	assert.Equal(t, []string{"p1"}, scope.ProjectIds)
	assert.Equal(t, model.AccessRead, scope.AccessMap["p1"])
}

func TestEffectiveAccess(t *testing.T) {
	svc, _, _, _ := newTenantFixture(t)

	cases := []struct {
		name      string
		userId    string
		projectId string
		want      string
	}{
		{"owner always EDIT", "owner", "p1", model.AccessEdit},
		{"member without row defaults to READ", "member", "p1", model.AccessRead},
		{"explicit row wins", "member", "p2", model.AccessEdit},
		{"client explicit row", "client", "p1", model.AccessRead},
		{"client without row has nothing", "client", "p2", ""},
		{"stranger has nothing", "stranger", "p1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			level, err := svc.EffectiveAccess(tc.userId, tc.projectId)
			require.NoError(t, err)
			assert.Equal(t, tc.want, level)
		})
	}
}

func TestRequireProjectAccess(t *testing.T) {
	svc, _, _, _ := newTenantFixture(t)

	assert.NoError(t, svc.RequireProjectAccess("owner", "p1", model.AccessEdit))
	assert.NoError(t, svc.RequireProjectAccess("member", "p1", model.AccessRead))

	// READ 不足以通过 EDIT 守卫
	assert.ErrorIs(t, svc.RequireProjectAccess("member", "p1", model.AccessEdit), ErrForbidden)
	assert.ErrorIs(t, svc.RequireProjectAccess("client", "p2", model.AccessRead), ErrForbidden)
	assert.ErrorIs(t, svc.RequireProjectAccess("stranger", "p1", model.AccessRead), ErrForbidden)
}

func TestCapabilitiesOwnerBypass(t *testing.T) {
	svc, _, _, _ := newTenantFixture(t)

	caps, err := svc.Capabilities("owner", "t1")
	require.NoError(t, err)
	assert.True(t, caps.IsSuperAdmin)
	assert.True(t, caps.CanAccessUsers)
	assert.True(t, caps.CanCreateUsers)
	assert.True(t, caps.CanEditUsers)
	assert.True(t, caps.CanDeleteUsers)
}

func TestCapabilitiesFlagGating(t *testing.T) {
	svc, _, _, permRepo := newTenantFixture(t)

	// 无权限行: 全部关闭
	caps, err := svc.Capabilities("member", "t1")
	require.NoError(t, err)
	assert.False(t, caps.IsSuperAdmin)
	assert.False(t, caps.CanAccessUsers)
	assert.False(t, caps.CanCreateUsers)

	// 子能力标志在缺少 canAccessUsers 时不生效
	require.NoError(t, permRepo.UpsertPermission(&model.UserPermission{
		UserId: "member", CanCreateUsers: true,
	}))
	caps, err = svc.Capabilities("member", "t1")
	require.NoError(t, err)
	assert.False(t, caps.CanCreateUsers)

	// canAccessUsers 打开后子能力标志生效
	require.NoError(t, permRepo.UpsertPermission(&model.UserPermission{
		UserId: "member", CanAccessUsers: true, CanCreateUsers: true,
	}))
	caps, err = svc.Capabilities("member", "t1")
	require.NoError(t, err)
	assert.True(t, caps.CanAccessUsers)
	assert.True(t, caps.CanCreateUsers)
	assert.False(t, caps.CanEditUsers)
	assert.False(t, caps.CanDeleteUsers)
}
