package repository

import "context"

// ArchiveRepository guarda uma cópia dos arquivos do relatório. Retorna a URI do objeto gravado.
type ArchiveRepository interface {
	Upload(ctx context.Context, key string, path string) (string, error)
}
