// Package config reads CLI session files.
//
// A session file is YAML:
//
//	xsd: schemas/header.xsd
//	xml: samples/header.xml
//	out_dir: build
//	root: Header
//	namespace: urn:example:header
//	prefix: h
//	log:
//	  level: debug
//	  file: build/xmlbin.log
//	metrics_file: build/xmlbin.prom
//
// Relative paths are resolved against the directory of the file.
package config
