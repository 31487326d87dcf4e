package availability

import "fmt"

// FormatDuration renders a minute count as the label shown next to slot
// pickers. Labels are Swedish (the product locale): "min", "tim", "dygn".
func FormatDuration(minutes int) string {
	switch {
	case minutes >= 1440 && minutes%1440 == 0:
		return fmt.Sprintf("%d dygn", minutes/1440)
	case minutes >= 60 && minutes%60 == 0:
		return fmt.Sprintf("%d tim", minutes/60)
	case minutes >= 60:
		return fmt.Sprintf("%d tim %d min", minutes/60, minutes%60)
	default:
		return fmt.Sprintf("%d min", minutes)
	}
}
