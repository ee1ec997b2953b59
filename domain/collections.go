package domain

const (
	CollectionAdminAccounts = "system_auth_users"
)
const (
	CollectionAdminGrants = "new_releases_admins"
)

const (
	CollectionReleaseRows = "new_releases"
)
