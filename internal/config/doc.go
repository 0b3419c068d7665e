// Package config resolves user-level settings for the scaffolder. Values come
// from command-line flags, CREATE_SUI_DAPP_* environment variables, and the
// optional ~/.create-sui-dapp/config.yaml file, in that order of precedence.
package config
