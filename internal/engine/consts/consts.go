package consts

// redis key prefixes
const (
	// UserTokenKey 用户会话 token 前缀, 完整 key: pulseplan:user:token:<userId>
	UserTokenKey = "pulseplan:user:token:"

	// UserInfoKey 用户信息缓存前缀
	UserInfoKey = "pulseplan:user:info:"

	// VaultUnlockKey 密码库解锁状态前缀, 存在即视为已通过 PIN 校验
	VaultUnlockKey = "pulseplan:vault:unlock:"
)

// fiber locals keys
const (
	ClaimsKey    = "claims"
	WorkspaceKey = "workspace"
	ScopeKey     = "scope"
)

// WorkspaceCookie 当前工作区 cookie 名称
const WorkspaceCookie = "pp-workspace"
