package toast

import "errors"

func Success(title, description string) Toast {
	return Toast{Kind: KindSuccess, Title: title, Description: description}
}

func Error(title, description string) Toast {
	return Toast{Kind: KindError, Title: title, Description: description}
}

func Info(title, description string) Toast {
	return Toast{Kind: KindInfo, Title: title, Description: description}
}

func Warning(title, description string) Toast {
	return Toast{Kind: KindWarning, Title: title, Description: description}
}

func LoginSuccess() Toast {
	return Success("Login successful!", "Welcome back to your dashboard")
}

func LoginFailed(msg string) Toast {
	return Error("Login failed", or(msg, "Invalid credentials or server error"))
}

func RegistrationSuccess() Toast {
	return Success("Account created successfully!", "Your author account is ready")
}

func RegistrationFailed(msg string) Toast {
	return Error("Registration failed", or(msg, "Unable to complete registration"))
}

func LogoutSuccess() Toast {
	return Success("Logged out successfully", "You have been safely logged out")
}

func ValidationError(description string) Toast {
	return Error("Validation error", description)
}

func PasswordMismatch() Toast {
	return Error("Password mismatch", "Please ensure both passwords match")
}

func NoteCreated() Toast {
	return Success("Note created successfully!", "Your note has been successfully created")
}

func NoteUpdated() Toast {
	return Success("Note updated successfully!", "Your changes have been saved")
}

func NoteAction(title, description string) Toast {
	return Success(title, description)
}

func OperationFailed(operation, msg string) Toast {
	return Error(operation+" failed", or(msg, "Something went wrong while performing "+operation))
}

func NetworkError() Toast {
	return Error("Network error", "Please check your internet connection")
}

func Unauthorized() Toast {
	return Error("Unauthorized", "Please login to access this feature")
}

// Describe returns the user-facing message carried by err, or fallback.
// Errors opt in by implementing DisplayMessage.
func Describe(err error, fallback string) string {
	var d interface{ DisplayMessage() string }
	if errors.As(err, &d) {
		if msg := d.DisplayMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// NoteMoved reports a trash, restore, delete or visibility change.
func NoteMoved(title string) Toast {
	return NoteAction(title, "Your notes have been updated")
}
