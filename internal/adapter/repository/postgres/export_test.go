package postgres

var Schema = schema
