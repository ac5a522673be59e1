package audithook

// Action constants for audit events.
const (
	// Movement actions
	ActionMinted      = "ledger.minted"
	ActionBurned      = "ledger.burned"
	ActionTransferred = "ledger.transferred"
	ActionDenied      = "ledger.denied"

	// Vesting actions
	ActionVestingCreated = "vesting.created"

	// Access actions
	ActionWhitelistAdded   = "whitelist.added"
	ActionWhitelistRemoved = "whitelist.removed"
	ActionFrozen           = "holder.frozen"
	ActionUnfrozen         = "holder.unfrozen"

	// System actions
	ActionPaused   = "system.paused"
	ActionUnpaused = "system.unpaused"
)

// Resource constants for audit events.
const (
	ResourceLedger  = "ledger"
	ResourceHolder  = "holder"
	ResourceVesting = "vesting"
	ResourceSystem  = "system"
)

// Category constants for audit events.
const (
	CategoryMovement = "movement"
	CategoryAccess   = "access"
	CategorySystem   = "system"
)

// Severity constants for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Outcome constants for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
