// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

/*
Package config loads Revets configuration with Koanf v2.

Sources are layered, later ones winning:

 1. Built-in defaults (see defaultConfig)
 2. A YAML file: $CONFIG_PATH, config.yaml, config.yml, /etc/revets/config.yaml
 3. A .env file in the working directory (merged into the environment, never overriding it)
 4. Environment variables

Only the variables listed in envMappings are read, so unrelated environment
variables cannot leak into configuration. Common ones:

	CSV_PATH           pipeline.csv_path            (sales.csv)
	STRICT_SCHEMA      pipeline.strict_schema       (true)
	DB_DRIVER          database.driver              (duckdb | sqlite | postgres)
	DB_PATH            database.path                (sales.db)
	PARQUET_PATH       export.path                  (sales.parquet)
	S3_BUCKET          export.s3.bucket             (upload disabled when empty)
	HTTP_PORT          server.port                  (5000)
	CACHE_TTL          cache.ttl                    (300s)
	SERVICE_LOG_PATH   recommend.log_path           (service.log)
	LOG_LEVEL          logging.level                (info)

Slice fields (CORS_ORIGINS, RECOMMEND_PRODUCT_IDS) accept comma-separated values.

Example config.yaml:

	database:
	  driver: sqlite
	  path: /var/lib/revets/sales.sqlite
	cache:
	  ttl: 2m
	recommend:
	  product_ids: [7, 8, 9]
*/
package config
