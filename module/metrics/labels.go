package metrics

const (
	LabelResource = "resource"
	LabelVariant  = "variant"
	LabelCategory = "category"
	LabelStage    = "stage"
)

const (
	ResourceUndefined    = "undefined"
	ResourceRegister     = "register"
	ResourcePendingClaim = "pending_claim"
)

const (
	StageAdmission  = "admission"
	StageConnection = "connection"
)
