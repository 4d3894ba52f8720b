// Package model defines the records and configuration types shared across segscope.
package model
