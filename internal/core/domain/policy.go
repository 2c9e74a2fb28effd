package domain

// Actor is the authenticated caller of a service operation. Services take it
// as an explicit parameter; there is no ambient request-scoped identity.
type Actor struct {
	UserID string
	Role   UserRole
}

// IsAdmin reports whether the actor holds the application-wide admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanCreateProject reports whether the actor may create a new project.
// Any authenticated user may; the creator becomes the project owner.
func CanCreateProject(actor Actor) bool {
	return actor.UserID != ""
}

// CanManageProject reports whether the actor may update or delete the
// project, manage its membership, and resolve its access requests.
func CanManageProject(actor Actor, project *Project) bool {
	return actor.IsAdmin() || actor.UserID == project.OwnerID
}

// CanEditTransactions reports whether the actor may update or delete ledger
// entries of the project. Same rule as project management.
func CanEditTransactions(actor Actor, project *Project) bool {
	return CanManageProject(actor, project)
}

// CanRemoveMember reports whether the actor may remove the given user from
// the project. The owner can never be removed, regardless of role.
func CanRemoveMember(actor Actor, project *Project, targetUserID string) bool {
	if targetUserID == project.OwnerID {
		return false
	}
	return CanManageProject(actor, project)
}
