package module

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const annotatedModule = `import com.mastfrog.modxule.annotations.Artifact;
import com.mastfrog.module.annotations.Maven;
import com.mastfrog.modxule.annotations.Foo;
import com.mastfrog.modxule.annotations.Blarg;
import com.mastfrog.modxule.annotations.Boob;
import com.mastfrog.modxule.annotations.Arg;
import com.mastfrog.util.service.AbstractWoogle;
import javax.annotation.processing.Processor;
import com.mastfrog.giulius.annotation.processors.DefaultsAnnotationProcessor;
import foo.bar.Workg;

@Maven( value = {
    @Artifact(javaModule="util.preconditions", is="com.mastfrog:util-preconditions:2.8.1")
})
@Workg({ String.class, Integer.class, Thread.class })
@Workg({ Arg.class, Blarg.class, })

@Foo( Xd.class )

@Slarg( mub = 'g', gug = 524324L, wig = 0.432D)

@Blarg({ WIG, WUG })

@Noog( { BUG, WUG } )
@Glark

@Poob(bargle = WOOB,
      bug = true,
      gug = 23
)

module build.thing {
    requires static module.annotations;
    requires module.info.grammar;
    requires transitive fnords.are.invisible;
    requires static java.compiler;
    opens wurg.gwee to wumble.squmble, argle.bargle;
    uses AbstractWoogle;
    provides Processor with
       DefaultsAnnotationProcessor,
       com.mastfrog.giulius.annotation.processors.NamespaceAnnotationProcessor;
}`

const enumConstantsModule = `import com.foo.SomeAnno;
import com.foo.SomeEnum.ONE;
import com.foo.SomeEnum.TWO;
import com.foo.SomeEnum.THREE;
import com.foo.OtherAnno;
import com.foo.Oe;

@SomeAnno({ ONE, TWO, THREE})
@OtherAnno({ Oe.FIRST, Oe.SECOND, Oe.THIRD})
module poodle.farb {
    requires transitive something;
}
`

func mustParse(t *testing.T, src string) *Model {
	t.Helper()
	m, err := ParseString(src, WithListener(Failing), WithFile("module-info.java"))
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

func mustAnnotation(t *testing.T, m *Model, name string) *Annotation {
	t.Helper()
	a, ok := m.FindAnnotation(name)
	require.True(t, ok, "no %s annotation", name)
	return a
}

func mustProperty(t *testing.T, a *Annotation, key string) *Value {
	t.Helper()
	v, ok := a.Property(key)
	require.True(t, ok, "@%s has no %q", a.Name(), key)
	return v
}
