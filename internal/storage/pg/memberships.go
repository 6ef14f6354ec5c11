package pg

import (
	"github.com/pictonet/pictonet/internal/domain"
)

// UserGroups returns the group ids a user belongs to. An unknown user simply
// has no groups; that is not an error here.
func (s *Storage) UserGroups(userId domain.UserId) (domain.GroupIds, error) {
	rows, err := s.db.Query(`
	SELECT group_id
	FROM group_memberships
	WHERE user_id = $1`, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := domain.GroupIds{}
	for rows.Next() {
		var group domain.GroupId
		if err := rows.Scan(&group); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}
