package ua

import "fmt"

// StatusCode is an OPC UA status code as defined in OPC 10000-4. The two most
// significant bits encode the severity: 00 good, 01 uncertain, 10 bad.
type StatusCode uint32

// Status codes used by the bridge. The numeric values are the ones assigned by
// the OPC UA specification.
const (
	StatusGood StatusCode = 0x00000000

	StatusBadUnexpectedError           StatusCode = 0x80010000
	StatusBadInternalError             StatusCode = 0x80020000
	StatusBadTimeout                   StatusCode = 0x800A0000
	StatusBadServiceUnsupported        StatusCode = 0x800B0000
	StatusBadCommunicationError        StatusCode = 0x80050000
	StatusBadSubscriptionIDInvalid     StatusCode = 0x80280000
	StatusBadNodeIDUnknown             StatusCode = 0x80340000
	StatusBadAttributeIDInvalid        StatusCode = 0x80350000
	StatusBadNotReadable               StatusCode = 0x803A0000
	StatusBadNotWritable               StatusCode = 0x803B0000
	StatusBadContinuationPointInvalid  StatusCode = 0x804A0000
	StatusBadMonitoredItemIDInvalid    StatusCode = 0x80420000
	StatusBadMethodInvalid             StatusCode = 0x80750000
	StatusBadTooManyOperations         StatusCode = 0x80100000
	StatusBadSessionClosed             StatusCode = 0x80260000
	StatusBadDisconnect                StatusCode = 0x80AD0000
	StatusBadConnectionClosed          StatusCode = 0x80AE0000
	StatusBadServerNotConnected        StatusCode = 0x802D0000
	StatusUncertainInitialValue        StatusCode = 0x40920000
	StatusGoodSubscriptionTransferable StatusCode = 0x002D0000
)

// IsGood returns true for good severity (including good sub-codes).
func (s StatusCode) IsGood() bool {
	return s>>30 == 0
}

// IsUncertain returns true for uncertain severity.
func (s StatusCode) IsUncertain() bool {
	return s>>30 == 1
}

// IsBad returns true for bad severity.
func (s StatusCode) IsBad() bool {
	return s&0x80000000 != 0
}

// Name returns the symbolic name for known status codes, or an empty string.
func (s StatusCode) Name() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return ""
}

// String returns the symbolic name when known, otherwise the hex code.
func (s StatusCode) String() string {
	if name := s.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(s))
}

var statusNames = map[StatusCode]string{
	StatusGood:                         "Good",
	StatusBadUnexpectedError:           "BadUnexpectedError",
	StatusBadInternalError:             "BadInternalError",
	StatusBadTimeout:                   "BadTimeout",
	StatusBadServiceUnsupported:        "BadServiceUnsupported",
	StatusBadCommunicationError:        "BadCommunicationError",
	StatusBadSubscriptionIDInvalid:     "BadSubscriptionIdInvalid",
	StatusBadNodeIDUnknown:             "BadNodeIdUnknown",
	StatusBadAttributeIDInvalid:        "BadAttributeIdInvalid",
	StatusBadNotReadable:               "BadNotReadable",
	StatusBadNotWritable:               "BadNotWritable",
	StatusBadContinuationPointInvalid:  "BadContinuationPointInvalid",
	StatusBadMonitoredItemIDInvalid:    "BadMonitoredItemIdInvalid",
	StatusBadMethodInvalid:             "BadMethodInvalid",
	StatusBadTooManyOperations:         "BadTooManyOperations",
	StatusBadSessionClosed:             "BadSessionClosed",
	StatusBadDisconnect:                "BadDisconnect",
	StatusBadConnectionClosed:          "BadConnectionClosed",
	StatusBadServerNotConnected:        "BadServerNotConnected",
	StatusUncertainInitialValue:        "UncertainInitialValue",
	StatusGoodSubscriptionTransferable: "GoodSubscriptionTransferable",
}
