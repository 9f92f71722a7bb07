// Package policy holds the access-control decisions for the taskboard.
// Every function is pure: it inspects the actor and (optionally) the
// resource and returns a verdict, never touching storage. Services consult
// these functions before every mutation; they are never bypassed.
package policy

import "github.com/dmitrijs2005/taskboard/internal/server/models"

// CanViewTask reports whether the actor may read the task and its comments.
// Admins see every task; staff see only tasks they are assigned to.
func CanViewTask(actor models.Actor, task *models.Task) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return task.AssignedTo(actor.ID)
}

// CanCreateTask reports whether the actor may create tasks. Admin only.
func CanCreateTask(actor models.Actor) bool {
	return actor.Role == models.RoleAdmin
}

// CanMutateAssignees reports whether the actor may change a task's assignee
// set. Admin only.
func CanMutateAssignees(actor models.Actor) bool {
	return actor.Role == models.RoleAdmin
}

// CanMutateStatus reports whether the actor may change the task's status:
// admins always, staff only on tasks assigned to them.
func CanMutateStatus(actor models.Actor, task *models.Task) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return task.AssignedTo(actor.ID)
}

// CanEditTaskDetails reports whether the actor may edit a task's title,
// description, priority, or due date. Admin only; staff edits are limited
// to the status field on their own tasks.
func CanEditTaskDetails(actor models.Actor) bool {
	return actor.Role == models.RoleAdmin
}

// CanManageStaff reports whether the actor may create, update, or delete
// user accounts. Admin only.
func CanManageStaff(actor models.Actor) bool {
	return actor.Role == models.RoleAdmin
}
