package model

// Staff is a read-only directory entry. Appointments keep a denormalized
// snapshot of Name and Color; the directory is not kept live-synced.
type Staff struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// StaffList is an ordered staff axis with lookup by id.
type StaffList []Staff

func (l StaffList) Lookup(id string) (Staff, bool) {
	for _, s := range l {
		if s.ID == id {
			return s, true
		}
	}
	return Staff{}, false
}

// IndexOf returns the axis position of a staff id, or -1.
func (l StaffList) IndexOf(id string) int {
	for i, s := range l {
		if s.ID == id {
			return i
		}
	}
	return -1
}
