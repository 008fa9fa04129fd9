package diagnostics

// Code is a stable diagnostic identifier, matching the closed taxonomy in
// spec.md §7. Unlike the teacher's MsgID (internal/logger/msg_ids.go), which
// exists so individual warnings can be independently silenced, every Code
// here is fatal (spec.md §7: "the first rejection fails the whole
// compilation") so there is no log-level override table to go with it —
// just a stable string for tooling to match on.
type Code string

const (
	ECodeUnsupportedNode    Code = "E_UNSUPPORTED_NODE"
	ECodeUnsupportedFeature Code = "E_UNSUPPORTED_FEATURE"
	ECodeParamDestructure   Code = "E_PARAM_DESTRUCTURE"
	ECodeVarDestructure     Code = "E_VAR_DESTRUCTURE"
	ECodeComputedKey        Code = "E_COMPUTED_KEY"
	ECodeObjectKey          Code = "E_OBJECT_KEY"
	ECodeMemberAugAssign    Code = "E_MEMBER_AUGASSIGN"
	ECodeUpdateMember       Code = "E_UPDATE_MEMBER"
	ECodeSequenceExprCtx    Code = "E_SEQUENCE_EXPR_CONTEXT"
	ECodeUpdateExprCtx      Code = "E_UPDATE_EXPR_CONTEXT"
	ECodeBreakOutside       Code = "E_BREAK_OUTSIDE"
	ECodeContinueOutside    Code = "E_CONTINUE_OUTSIDE"
	ECodeContinueInSwitch   Code = "E_CONTINUE_IN_SWITCH"
	ECodeSwitchFallthrough  Code = "E_SWITCH_FALLTHROUGH"
	ECodeArrayPushMultiArg  Code = "E_ARRAY_PUSH_MULTI_ARG"
	ECodeArrayMethodAmbig   Code = "E_ARRAY_METHOD_AMBIGUOUS"
	ECodeRegex              Code = "E_REGEX"
)
