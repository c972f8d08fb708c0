// Package logger wraps zap with a global sugared console logger and
// context helpers (ToContext, FromContext, WithName, WithKV).
//
// Services take a context and log through the logger it carries, so a
// command names its logger once and every step below inherits it.
package logger
