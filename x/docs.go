/*
Package x contains some standard extensions

Extensions are sub-packages of x, while interfaces and helpers shared
between them, like the authentication of the caller, live in x itself.
*/
package x
