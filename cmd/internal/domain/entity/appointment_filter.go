package entity

// AppointmentFilter narrows an appointment query. Types is always applied,
// so an empty Types matches nothing. A nil IDs leaves ids unrestricted
// while an empty non-nil IDs matches nothing.
type AppointmentFilter struct {
	Types          []AppointmentType
	ExcludeDeleted bool
	PublishedOnly  bool // PUBLISHED or NULL status only
	IDs            []string
}
