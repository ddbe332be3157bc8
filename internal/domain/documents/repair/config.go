package repair

import "repairdesk/pkg/numerator"

// NumberPrefix is the document number prefix, e.g. REP-2026-00001.
const NumberPrefix = "REP"

// NumeratorStrategy for repair numbers.
const NumeratorStrategy = numerator.StrategyStrict
