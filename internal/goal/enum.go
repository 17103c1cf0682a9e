package goal

type Status string

const (
	StatusDraft           Status = "draft"
	StatusHRAssigned      Status = "hr_assigned"
	StatusManagerAssigned Status = "manager_assigned"
	StatusAccepted        Status = "accepted"
	// StatusInProgress is read as StatusAccepted and never written.
	StatusInProgress      Status = "in_progress"
	StatusSubmitted       Status = "submitted"
	StatusManagerApproved Status = "manager_approved"
	StatusHRApproved      Status = "hr_approved"
	StatusArchived        Status = "archived"
)

var AllStatuses = []Status{
	StatusDraft,
	StatusHRAssigned,
	StatusManagerAssigned,
	StatusAccepted,
	StatusInProgress,
	StatusSubmitted,
	StatusManagerApproved,
	StatusHRApproved,
	StatusArchived,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusArchived, StatusManagerApproved, StatusHRApproved:
		return true
	}
	return false
}

func (s Status) isActive() bool {
	return s == StatusAccepted || s == StatusInProgress
}

func (s Status) isAwaitingAcceptance() bool {
	return s == StatusHRAssigned || s == StatusManagerAssigned
}

type Timeline string

const (
	TimelineQuarterly  Timeline = "quarterly"
	TimelineHalfYearly Timeline = "half-yearly"
	TimelineAnnual     Timeline = "annual"
)

var AllTimelines = []Timeline{
	TimelineQuarterly,
	TimelineHalfYearly,
	TimelineAnnual,
}

func (t Timeline) IsValid() bool {
	for _, v := range AllTimelines {
		if t == v {
			return true
		}
	}
	return false
}

type Origin string

const (
	OriginSelf     Origin = "self"
	OriginAssigned Origin = "assigned"
)

type Action string

const (
	ActionAccept   Action = "accept"
	ActionProgress Action = "update_progress"
	ActionEdit     Action = "edit"
	ActionSubmit   Action = "submit"
	ActionArchive  Action = "archive"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
)
