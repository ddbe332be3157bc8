package sale

import "repairdesk/pkg/numerator"

// NumberPrefix is the document number prefix, e.g. SAL-2026-00001.
const NumberPrefix = "SAL"

// NumeratorStrategy for sale numbers.
const NumeratorStrategy = numerator.StrategyStrict
