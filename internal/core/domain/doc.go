// Package domain contains the core business entities for carbonscore.
// It has no dependencies on adapters or infrastructure: documents and
// chunks for the knowledge base, ADEME publications and their PDF
// attachments, emission factors and assessments for carbon scoring.
package domain
