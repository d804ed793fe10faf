package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Файловый ввод/вывод
	IOInfo       Code = 4000
	IONotFound   Code = 4001
	IOReadError  Code = 4002
	IOWriteError Code = 4003

	// Операции буфера
	BufInfo               Code = 5000
	BufCapacityExceeded   Code = 5001
	BufLineTooLong        Code = 5002
	BufLineNotFound       Code = 5003
	BufPositionOutOfRange Code = 5004
	BufEmbeddedTerminator Code = 5005

	// Скрипты правок
	ScrInfo        Code = 6000
	ScrInvalidEdit Code = 6001
	ScrEditFailed  Code = 6002

	// Снимки
	SnpInfo    Code = 7000
	SnpCorrupt Code = 7001
	SnpSchema  Code = 7002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		IOInfo:                "I/O information",
		IONotFound:            "File could not be opened for reading",
		IOReadError:           "File read error",
		IOWriteError:          "File could not be written",
		BufInfo:               "Buffer information",
		BufCapacityExceeded:   "Buffer capacity exceeded",
		BufLineTooLong:        "Line exceeds maximum length",
		BufLineNotFound:       "Line does not exist",
		BufPositionOutOfRange: "Position is outside the line",
		BufEmbeddedTerminator: "Text contains a line terminator",
		ScrInfo:               "Script information",
		ScrInvalidEdit:        "Invalid edit in script",
		ScrEditFailed:         "Script edit failed",
		SnpInfo:               "Snapshot information",
		SnpCorrupt:            "Snapshot is corrupt",
		SnpSchema:             "Unsupported snapshot schema",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("BUF%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("SCR%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("SNP%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
