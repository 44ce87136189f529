package repo

import "github.com/google/wire"

// ProviderSet 提供 repository 层依赖
var ProviderSet = wire.NewSet(
	NewUserRepo,
	NewUserPermissionRepo,
	NewTeamRepo,
	NewProjectRepo,
	NewProjectAccessRepo,
	NewInviteRepo,
	NewTaskRepo,
	NewTimeEntryRepo,
	NewCredentialRepo,
	NewMessageRepo,
	NewMediaRepo,
)
