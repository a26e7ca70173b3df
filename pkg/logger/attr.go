package logger

import "log/slog"

// Error records err under "error"; nil yields an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func UserID(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}

func TenantID(id int64) slog.Attr {
	return slog.Int64("tenant_id", id)
}

func TenantSlug(slug string) slog.Attr {
	return slog.String("tenant_slug", slug)
}

// ResolutionState records how the request's tenant was chosen.
func ResolutionState(state string) slog.Attr {
	return slog.String("resolution", state)
}

func Role(role string) slog.Attr {
	return slog.String("role", role)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Service(name string) slog.Attr {
	return slog.String("service", name)
}
