package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
	ModeFileInput
	ModeConfirm
)

// InputOperation is what the single-line prompt is collecting.
type InputOperation int

const (
	InputAddText InputOperation = iota
	InputAddImage
	InputEditContent
	InputRename
	InputBackground
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpExport
)

type ConfirmAction int

const (
	ConfirmDelete ConfirmAction = iota
	ConfirmClear
	ConfirmQuit
	ConfirmNewDocument
	ConfirmOverwriteFile
	ConfirmRestoreClipboard
)

const (
	nudgeStep    = 10
	panStep      = 50
	rotateStep   = 15
	opacityStep  = 0.1
	cascadeStep  = 20
	cascadeSlots = 10
	cascadeStart = 40

	listWidth = 46
	docExt    = ".json"
)

// palette is cycled through by the recolor key.
var palette = []string{
	"#3B82F6", "#EF4444", "#10B981", "#F59E0B",
	"#8B5CF6", "#EC4899", "#111827", "#FFFFFF",
}
