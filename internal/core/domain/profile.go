package domain

// Profile is the common shape shared by AdminProfile and UserProfile
// documents. AccountID is a weak back-reference to exactly one account in
// the directory; the profile's Role must equal that account's role.
type Profile struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string `json:"email" bson:"email" validate:"required,email"`
	FirstName string `json:"firstName" bson:"firstName" validate:"required"`
	LastName  string `json:"lastName" bson:"lastName" validate:"required"`
	Role      string `json:"role" bson:"role" validate:"required,oneof=ADMIN USER"`
	AccountID string `json:"accountID" bson:"accountID" validate:"required"`
}

// ProfileFromDoc builds a Profile from a stored or define-shaped document.
func ProfileFromDoc(d Doc) Profile {
	return Profile{
		ID:        d.ID(),
		Email:     d.Str("email"),
		FirstName: d.Str("firstName"),
		LastName:  d.Str("lastName"),
		Role:      d.Str("role"),
		AccountID: d.Str("accountID"),
	}
}

// LooksLikeProfile reports whether the value already carries the identifying
// profile fields. The directory's GetProfile passes such values through
// unchanged.
func LooksLikeProfile(v any) (Doc, bool) {
	d, ok := v.(Doc)
	if !ok {
		if m, isMap := v.(map[string]any); isMap {
			d = Doc(m)
		} else {
			return nil, false
		}
	}
	_, hasFirst := d["firstName"]
	_, hasLast := d["lastName"]
	_, hasRole := d["role"]
	return d, hasFirst && hasLast && hasRole
}
