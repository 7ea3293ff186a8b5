package example

type MemberRole string

const (
	MemberRolePresident MemberRole = "President"
	MemberRoleMember    MemberRole = "Member"
)

type MemberStatus string

const (
	MemberStatusActive MemberStatus = "active"
)

type EventType string

const (
	EventUserRegistered EventType = "user.registered"
)

type Membership struct {
	Role   MemberRole
	Status MemberStatus
}

type Event struct {
	Type EventType
}

func bad() {
	m := &Membership{}
	m.Role = "Treasurer" // want "enum field Role assigned string literal"

	_ = Membership{Status: "banned"} // want "enum field Status assigned string literal"

	e := &Event{}
	e.Type = "user.deleted" // want "enum field Type assigned string literal"
}

func good() {
	m := &Membership{Role: MemberRolePresident, Status: MemberStatusActive}
	m.Role = MemberRoleMember

	e := Event{Type: EventUserRegistered}
	_ = e
}

func alsoGood() {
	role := MemberRolePresident
	m := &Membership{Role: role}
	_ = m
}
