package importer

import "github.com/clientive/clientive/internal/usecase"

// Msg is the interface for all import wizard messages.
//
//sumtype:decl
type Msg interface {
	sealed()
}

// MsgFileLoaded is sent when a file has been read and previewed.
type MsgFileLoaded struct {
	Preview  *usecase.PreviewImportOutput
	Err      error
	FileName string
}

func (MsgFileLoaded) sealed() {}

// MsgRowImported is sent after one row went through the creation contract.
type MsgRowImported struct {
	Err error // usecase.RowError when the row was rejected
	Row int
}

func (MsgRowImported) sealed() {}
