package utils

const ShortSlashDateLayout = "2006/01/02"
const ShortDashDateLayout = "2006-01-02"

// USER_ENTERED lets the store parse numbers and dates the way a person typing them would.
const ValueInputUserEntered = "USER_ENTERED"

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
