package detect

import "strings"

// Role names a column's part in a transactional calculation.
type Role string

const (
	RoleQuantity Role = "quantity"
	RolePrice    Role = "price"
	RoleSubtotal Role = "subtotal"
	RoleTax      Role = "tax"
	RoleTotal    Role = "total"
)

// roleOrder fixes resolution priority. Subtotal and tax resolve before total
// so a "subtotal" header is never claimed by the total role.
var roleOrder = []Role{RoleSubtotal, RoleTax, RoleTotal, RoleQuantity, RolePrice}

func roleKeywords(role Role) []string {
	switch role {
	case RoleQuantity:
		return hints.Roles.Quantity
	case RolePrice:
		return hints.Roles.Price
	case RoleSubtotal:
		return hints.Roles.Subtotal
	case RoleTax:
		return hints.Roles.Tax
	case RoleTotal:
		return hints.Roles.Total
	}
	return nil
}

// ResolveRoles maps calculation roles to column names by keyword match over
// normalized headers. The first matching header wins a role and each header
// serves at most one role. This single resolver is shared by the analyzer's
// calculation check and the cleaner's calculation fix so the two can never
// disagree about which column is which.
func ResolveRoles(headers []string) map[Role]string {
	claimed := make(map[string]struct{}, len(headers))
	roles := make(map[Role]string)

	for _, role := range roleOrder {
		keywords := roleKeywords(role)
		for _, header := range headers {
			if _, taken := claimed[header]; taken {
				continue
			}
			norm := normalizeHeader(header)
			for _, kw := range keywords {
				if strings.Contains(norm, kw) {
					roles[role] = header
					claimed[header] = struct{}{}
					break
				}
			}
			if _, ok := roles[role]; ok {
				break
			}
		}
	}
	return roles
}
