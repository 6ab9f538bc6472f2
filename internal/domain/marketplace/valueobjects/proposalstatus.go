package valueobjects

// ProposalStatus values match the persisted representation.
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "PENDING"
	ProposalStatusAccepted ProposalStatus = "ACCEPTED"
	ProposalStatusDeclined ProposalStatus = "DECLINED"
	ProposalStatusExpired  ProposalStatus = "EXPIRED"
)

func (s ProposalStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible. Only
// PENDING proposals can move.
func (s ProposalStatus) IsTerminal() bool {
	return s != ProposalStatusPending
}

func (s ProposalStatus) CanTransitionTo(target ProposalStatus) bool {
	if s != ProposalStatusPending {
		return false
	}
	return target == ProposalStatusAccepted ||
		target == ProposalStatusDeclined ||
		target == ProposalStatusExpired
}

var ValidProposalStatuses = map[ProposalStatus]bool{
	ProposalStatusPending:  true,
	ProposalStatusAccepted: true,
	ProposalStatusDeclined: true,
	ProposalStatusExpired:  true,
}
