package utils

import (
	"fmt"
	"time"
)

// GenerateTxnID derives a gateway transaction id from the investment's
// primary key plus the current unix timestamp. The investment id makes it
// unique across rows; the timestamp keeps it unique across retries that
// re-initiate payment for the same row.
func GenerateTxnID(investmentID uint) string {
	return fmt.Sprintf("PM-%d-%d", investmentID, time.Now().Unix())
}
