package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"Radiant/internal/calc/dashboard"
)

var errUsage = errors.New("usage: /heat key=value ... (keys: " + strings.Join(inputKeys, ", ") + ")")

var inputKeys = []string{
	"t_device_c", "t_hand_c", "t_air_c", "a_device_m2", "a_hand_m2",
	"dx_m", "dy_m", "dz_m", "angle_deg", "h_w_m2k",
}

func fields(in *dashboard.Input) map[string]*float64 {
	return map[string]*float64{
		"t_device_c":  &in.TDeviceC,
		"t_hand_c":    &in.THandC,
		"t_air_c":     &in.TAirC,
		"a_device_m2": &in.ADeviceM2,
		"a_hand_m2":   &in.AHandM2,
		"dx_m":        &in.DxM,
		"dy_m":        &in.DyM,
		"dz_m":        &in.DzM,
		"angle_deg":   &in.AngleDeg,
		"h_w_m2k":     &in.HWM2K,
	}
}

// parseHeat applies "key=value" arguments on top of defaults.
func parseHeat(args []string, defaults dashboard.Input) (dashboard.Input, error) {
	in := defaults
	f := fields(&in)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return in, errUsage
		}
		ptr, known := f[strings.ToLower(key)]
		if !known {
			return in, fmt.Errorf("unknown parameter %q", key)
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
		if err != nil {
			return in, fmt.Errorf("%s: %q is not a number", key, value)
		}
		*ptr = v
	}
	return in, nil
}

func formatInput(in dashboard.Input) string {
	f := fields(&in)
	var b strings.Builder
	for _, k := range inputKeys {
		fmt.Fprintf(&b, "%s=%g\n", k, *f[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

// reply answers one chat message. ok is false for text that is not a bot
// command.
func reply(text string, defaults dashboard.Input) (string, bool) {
	parts := strings.Fields(text)
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "/") {
		return "", false
	}
	cmd, _, _ := strings.Cut(parts[0], "@")

	switch cmd {
	case "/start", "/help":
		return "Hand warmer heat exchange.\n" + errUsage.Error() + "\n/defaults shows the default input.", true
	case "/defaults":
		return formatInput(defaults), true
	case "/heat":
		in, err := parseHeat(parts[1:], defaults)
		if err != nil {
			return err.Error(), true
		}
		res, err := dashboard.Calculate(in)
		if err != nil {
			return "Cannot calculate: " + err.Error(), true
		}
		return fmt.Sprintf("%s\n%s\n%s", res.QRadText, res.QConvText, res.Scene.Label), true
	default:
		return "Unknown command. Try /help.", true
	}
}
