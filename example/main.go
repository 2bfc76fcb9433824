package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jes/initdb"
	"github.com/jes/initdb/schema"
)

func main() {
	dir, err := os.MkdirTemp("", "initdb-example-")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	schemaPath := filepath.Join(dir, schema.FileName)
	if err := os.WriteFile(schemaPath, []byte(schema.Default), 0644); err != nil {
		log.Fatalf("Failed to write schema: %v", err)
	}
	dbPath := filepath.Join(dir, "data", "example.db")

	report, err := initdb.Init(context.Background(), initdb.Options{
		Path:       dbPath,
		SchemaPath: schemaPath,
	})
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}

	fmt.Println("Database created successfully!")
	fmt.Printf("Database path: %s\n", report.Path)
	fmt.Printf("Tables: %v\n", report.Tables)
	fmt.Printf("Size: %s, schema version: %s\n", report.SizeString(), report.SchemaVersion)
}
