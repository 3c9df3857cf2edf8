package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Config errors
	ConfigLoadError
	ConfigGenerateError

	// Dataset errors
	DataMetricsReadError
	DataPublicationsReadError
	DataScoresReadError
	DataUnknownCampusError
	DataUnknownCategoryError

	// Synthesizer errors
	SynthNoCompleteCampusesError
	SynthOracleError
	SynthContractError
	SynthCanceledError

	// Auditor errors
	AuditCanceledError

	// Oracle errors
	OracleAPIKeyError
	OracleClientError
	OracleEmptyReplyError

	// Report errors
	ReportEncodeError
	ReportWriteError
	ReportReadError

	// Archive errors
	ArchiveOpenError
	ArchiveWriteError
	ArchiveQueryError
)
