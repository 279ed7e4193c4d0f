/*
Package vaulttest provides mocks and helpers for testing the wallet
extensions.
*/
package vaulttest
