package normalizer

import (
	"reflect"
	"testing"
)

const sampleSource = `import { Client } from 'discord.js';
import axios from "axios";
import './polyfill';

export class ChatIndexer {
}

export default class Fallback {
}

export async function indexAll() {
}

function helper() {
}

export interface IndexOptions {
}

export type ChunkRef = { id: string };

export { indexAll, helper as runHelper };
`

func TestExtractSourceMetadata(t *testing.T) {
	meta := ExtractSourceMetadata("indexer.ts", sampleSource)

	if want := []string{"ChatIndexer", "Fallback"}; !reflect.DeepEqual(meta.Classes, want) {
		t.Errorf("Classes = %v, want %v", meta.Classes, want)
	}
	if want := []string{"indexAll", "helper"}; !reflect.DeepEqual(meta.Functions, want) {
		t.Errorf("Functions = %v, want %v", meta.Functions, want)
	}
	if want := []string{"IndexOptions"}; !reflect.DeepEqual(meta.Interfaces, want) {
		t.Errorf("Interfaces = %v, want %v", meta.Interfaces, want)
	}
	if want := []string{"ChunkRef"}; !reflect.DeepEqual(meta.Types, want) {
		t.Errorf("Types = %v, want %v", meta.Types, want)
	}
	if want := []string{"indexAll", "runHelper"}; !reflect.DeepEqual(meta.Exports, want) {
		t.Errorf("Exports = %v, want %v", meta.Exports, want)
	}
}

func TestExtractSourceMetadata_Empty(t *testing.T) {
	meta := ExtractSourceMetadata("notes.txt", "no declarations here")
	if !meta.Empty() {
		t.Errorf("Empty() = false for %+v, want true", meta)
	}
}

func TestExtractImports(t *testing.T) {
	tests := []struct {
		name  string
		chunk string
		want  []string
	}{
		{
			name:  "from imports",
			chunk: "import { a } from 'mod-a';\nimport b from \"mod-b\";",
			want:  []string{"mod-a", "mod-b"},
		},
		{
			name:  "bare import",
			chunk: "import './side-effect';",
			want:  []string{"./side-effect"},
		},
		{
			name:  "no imports",
			chunk: "const x = 1;",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractImports(tt.chunk); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractImports() = %v, want %v", got, tt.want)
			}
		})
	}
}
