// Package api provides the restaurant POS REST API.
//
//	@title			Restaurant POS API
//	@version		1.0
//	@description	Restaurant point-of-sale and back-office API
//	@BasePath		/api
package api
