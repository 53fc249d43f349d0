// Package translate maps raw identity-provider error text to the
// pt-BR messages shown to end users. Providers change their wording
// between versions, so matching is substring-based rather than exact.
package translate

import "strings"

// Fallback is returned when no known provider error is recognized.
const Fallback = "Erro ao fazer login, tente novamente."

// Messages used by the OAuth callback flow. These never carry internal
// detail; operational context goes to the server log instead.
const (
	MsgInvalidLink   = "Link de autenticação inválido."
	MsgAuthFailed    = "Erro na autenticação. Tente novamente."
	MsgInternalError = "Erro interno do servidor. Tente novamente."
	MsgMissingFields = "Preencha e-mail e senha."
)

type mapping struct {
	substr  string
	message string
}

// table is ordered: the first entry whose substring is contained in the
// raw error wins. Ordering is part of the user-facing contract.
var table = []mapping{
	{"invalid login credentials", "E-mail ou senha incorretos."},
	{"email not confirmed", "E-mail não confirmado. Verifique sua caixa de entrada."},
	{"user not found", "Usuário não encontrado."},
	{"too many requests", "Muitas tentativas de login. Aguarde alguns minutos e tente novamente."},
	{"rate limit", "Muitas tentativas de login. Aguarde alguns minutos e tente novamente."},
	{"user is banned", "Esta conta está bloqueada. Entre em contato com a clínica."},
	{"signup is disabled", "Cadastro desativado. Entre em contato com a clínica."},
}

// Translate returns the localized message for a raw provider error.
// Matching is case-insensitive; unknown errors get the generic fallback.
func Translate(raw string) string {
	lower := strings.ToLower(raw)
	for _, m := range table {
		if strings.Contains(lower, m.substr) {
			return m.message
		}
	}
	return Fallback
}
