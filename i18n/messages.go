package i18n

// Message keys used by the auth flows
const (
	KeyUserExists         = "userExists"
	KeyUserNotFound       = "userNotFound"
	KeyInvalidOTP         = "invalidOtp"
	KeyInvalidCredentials = "invalidCredentials"
	KeyOTPSent            = "otpSent"
	KeySignupSuccess      = "signupSuccess"
	KeyLoginSuccess       = "loginSuccess"
	KeyPasswordReset      = "passwordReset"
	KeyOTPResent          = "otpResent"
)

const defaultLang = "en"

var messages = map[string]map[string]string{
	"en": {
		KeyUserExists:         "User already exists.",
		KeyUserNotFound:       "User not found.",
		KeyInvalidOTP:         "Invalid or expired OTP.",
		KeyInvalidCredentials: "Invalid credentials.",
		KeyOTPSent:            "OTP sent successfully.",
		KeySignupSuccess:      "Signup successful. Please verify OTP.",
		KeyLoginSuccess:       "Login successful.",
		KeyPasswordReset:      "Password reset successful.",
		KeyOTPResent:          "OTP resent successfully.",
	},
	"hi": {
		KeyUserExists:         "यूज़र पहले से मौजूद है।",
		KeyUserNotFound:       "यूज़र नहीं मिला।",
		KeyInvalidOTP:         "गलत या एक्सपायर हुआ OTP।",
		KeyInvalidCredentials: "गलत जानकारी।",
		KeyOTPSent:            "OTP सफलतापूर्वक भेजा गया।",
		KeySignupSuccess:      "साइनअप सफल। कृपया OTP वेरीफाई करें।",
		KeyLoginSuccess:       "लॉगिन सफल।",
		KeyPasswordReset:      "पासवर्ड सफलतापूर्वक रीसेट हुआ।",
		KeyOTPResent:          "OTP फिर से भेजा गया।",
	},
}

// T resolves a message key for a language, falling back to English for
// unknown languages or keys.
func T(lang, key string) string {
	if m, ok := messages[lang]; ok {
		if msg, ok := m[key]; ok {
			return msg
		}
	}
	return messages[defaultLang][key]
}

// Normalize maps any request-supplied language to a supported one.
func Normalize(lang string) string {
	if _, ok := messages[lang]; ok {
		return lang
	}
	return defaultLang
}
