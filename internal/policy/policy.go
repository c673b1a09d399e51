// Package policy decides whether a user may view or modify a homework item.
// The rules are pure functions over the user and the homework row so they can
// be checked before any mutation happens.
package policy

import "monagenda.fr/myagenda/internal/model"

// CanAccess reports whether user may view homework.
// Admins see everything; other users see homework addressed to their class
// or homework they created themselves.
func CanAccess(user *model.User, homework *model.Homework) bool {
	if user == nil || homework == nil {
		return false
	}
	if user.IsAdmin {
		return true
	}
	if homework.Class == user.Classe {
		return true
	}
	return homework.CreatorID != nil && *homework.CreatorID == user.ID
}

// CanModify reports whether user may update or delete homework.
// Class membership grants write access as well as read access: anyone in the
// class may fix a wrong due date or title, not only the original author.
func CanModify(user *model.User, homework *model.Homework) bool {
	return CanAccess(user, homework)
}
