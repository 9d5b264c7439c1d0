// Package model defines the provider-agnostic abstractions for the chat
// completion backends the local runtime path can run on.
//
// Core goals:
//   - Normalize tool / function call representation (ToolDefinition, ToolCall)
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight fakes for tests
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so the runner remains decoupled from vendor SDKs. The hosted
// deployment never touches this package; it exists so the agent can be
// exercised in-process before deploying.
package model
