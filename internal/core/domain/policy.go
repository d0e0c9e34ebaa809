package domain

// Approval policy: one stateless predicate per workflow action, mapping the
// actor's role set to a yes/no. Services consult these before every
// transition; the policy itself never mutates state.

// CanSubmit reports whether the actor may submit a draft for approval.
// Every workflow role may submit its own drafts.
func CanSubmit(roles RoleSet) bool {
	return roles.HasAny(RoleColaborador, RoleAprobador, RoleResponsable, RoleAdmin)
}

// CanApprove reports whether the actor may approve a pending expense.
func CanApprove(roles RoleSet) bool {
	return roles.HasAny(RoleAprobador, RoleResponsable, RoleAdmin)
}

// CanReject reports whether the actor may reject a pending expense.
func CanReject(roles RoleSet) bool {
	return roles.HasAny(RoleAprobador, RoleResponsable, RoleAdmin)
}

// CanMarkPaid reports whether the actor may register payment of an approved expense.
func CanMarkPaid(roles RoleSet) bool {
	return roles.HasAny(RoleAprobador, RoleResponsable, RoleAdmin)
}

// CanAnnul reports whether the actor may annul an expense. Colaboradores may
// cancel their own work; ownership is checked by the service, not here.
func CanAnnul(roles RoleSet) bool {
	return roles.HasAny(RoleColaborador, RoleAprobador, RoleResponsable, RoleAdmin)
}

// CanDelete reports whether the actor may delete a draft expense.
func CanDelete(roles RoleSet) bool {
	return roles.HasAny(RoleResponsable, RoleAdmin)
}

// CanAssignFunds reports whether the actor may create fund assignments and
// drive their lifecycle (treasury operations).
func CanAssignFunds(roles RoleSet) bool {
	return roles.HasAny(RoleResponsable, RoleAdmin)
}

// CanManageCatalogs reports whether the actor may mutate companies, cost
// centers and expense concepts.
func CanManageCatalogs(roles RoleSet) bool {
	return roles.HasAny(RoleResponsable, RoleAdmin)
}
