// Package pkg holds the shared plumbing for the imxrt-hal drivers:
// sentinel errors for configuration and hardware faults, and structured
// logging over [log/slog] with per-subsystem component tags.
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentTransfer, "transfer armed", "channel", 7)
//
// Errors are sentinel values, so callers branch with [errors.Is]:
//
//	if errors.Is(err, pkg.ErrChannelTaken) {
//	    // Try another channel index.
//	}
package pkg
